package viewer

const tubeVertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;

uniform mat4 uViewProj;

out vec3 vNormal;
out vec2 vUV;

void main() {
    vNormal = aNormal;
    vUV = aUV;
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const tubeFragmentShader = `#version 410 core
in vec3 vNormal;
in vec2 vUV;

uniform vec3 uLightDir;
uniform vec3 uColorHead;
uniform vec3 uColorTail;

out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    float diffuse = max(dot(n, -uLightDir), 0.0);
    // Stripes along the ring show the UV seam and winding.
    float stripe = 0.85 + 0.15 * step(0.5, fract(vUV.y * 4.0));
    vec3 base = mix(uColorTail, uColorHead, vUV.x) * stripe;
    FragColor = vec4(base * (0.25 + 0.75 * diffuse), 1.0);
}
`
